package cli

import (
	"context"
	"io"
)

// RunForTest runs the app with the given stdin and stdout
func RunForTest(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	return run(ctx, args, "test", in, out)
}
