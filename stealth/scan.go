package stealth

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/veilchain/secp256k1"
)

// ScanAddresses checks a batch of stealth address announcements against the
// recipient identified by the view secret and spend public key, distributing
// the work over at most workers goroutines.  It returns the indices of the
// matching announcements in input order.  The scan stops early when the
// context is cancelled or any announcement is structurally invalid.
func ScanAddresses(ctx context.Context, viewPriv *secp256k1.PrivateKey, spendPub *secp256k1.PublicKey, addrs []*Address, workers int) ([]int, error) {
	if workers < 1 {
		workers = 1
	}

	matched := make([]bool, len(addrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, addr := range addrs {
		if gctx.Err() != nil {
			break
		}

		i, addr := i, addr
		g.Go(func() error {
			ok, err := Check(viewPriv, spendPub, addr)
			if err != nil {
				return err
			}
			matched[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var indices []int
	for i, ok := range matched {
		if ok {
			indices = append(indices, i)
		}
	}
	return indices, nil
}
