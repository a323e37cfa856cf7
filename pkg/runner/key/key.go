package key

import (
	"context"

	"tableflip.dev/timeline/pkg/printers"
)

type Key struct{}

func (n *Key) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{}
	pp.Key()
	return nil
}
