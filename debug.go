package grove

import (
	"fmt"

	"go.uber.org/zap"
)

// logLevel gates the package logger. Warn by default; SetDebugMode lowers
// it to debug.
var logLevel = zap.NewAtomicLevelAt(zap.WarnLevel)

// logger is used by node operations, which have no Scene pointer.
var logger = newLogger()

func newLogger() *zap.Logger {
	cfg := zap.Config{
		Level:             logLevel,
		Encoding:          "console",
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("grove")
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree or component operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("grove debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			zap.Int("depth", depth), zap.Int("threshold", debugMaxTreeDepth), zap.String("node", n.Name))
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("child count exceeds threshold",
			zap.Int("children", len(n.children)), zap.Int("threshold", debugMaxChildCount), zap.String("node", n.Name))
	}
}
