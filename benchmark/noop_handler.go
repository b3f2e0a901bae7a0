package benchmark

import (
	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/handler"
)

func newNoopHandler() handler.Handler {
	return handler.NewFuncHandler(func(r *core.Record) error {
		_ = len(r.Message)
		return nil
	})
}
