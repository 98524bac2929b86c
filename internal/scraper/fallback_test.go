package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFirstSuccess(t *testing.T) {
	log := zap.NewNop().Sugar()
	var tried []string
	attempt := func(name string, ok bool, err error) Attempt {
		return Attempt{Name: name, Try: func(context.Context) (bool, error) {
			tried = append(tried, name)
			return ok, err
		}}
	}

	t.Run("stops at first success", func(t *testing.T) {
		tried = nil
		name, ok := FirstSuccess(context.Background(), log, "page length", []Attempt{
			attempt("api", false, nil),
			attempt("broken select", false, errors.New("not a select")),
			attempt("select", true, nil),
			attempt("never", true, nil),
		})
		assert.True(t, ok)
		assert.Equal(t, "select", name)
		assert.Equal(t, []string{"api", "broken select", "select"}, tried)
	})

	t.Run("nothing applies", func(t *testing.T) {
		tried = nil
		name, ok := FirstSuccess(context.Background(), log, "source filter", []Attempt{
			attempt("column", false, nil),
		})
		assert.False(t, ok)
		assert.Empty(t, name)
	})
}
