package scraper

import (
	"context"

	"go.uber.org/zap"
)

// Attempt is one candidate way of doing something the page may or may not
// support.
type Attempt struct {
	Name string
	Try  func(ctx context.Context) (bool, error)
}

// FirstSuccess runs the attempts in order and stops at the first one that
// reports success. Errors count as failures and are only logged. It returns
// the name of the attempt that worked.
func FirstSuccess(ctx context.Context, log *zap.SugaredLogger, goal string, attempts []Attempt) (string, bool) {
	for _, a := range attempts {
		if ctx.Err() != nil {
			return "", false
		}
		ok, err := a.Try(ctx)
		if err != nil {
			log.Debugf("· %s: %s failed: %v", goal, a.Name, err)
			continue
		}
		if ok {
			log.Debugf("· %s: using %s", goal, a.Name)
			return a.Name, true
		}
	}
	log.Debugf("· %s: no strategy applied", goal)
	return "", false
}
