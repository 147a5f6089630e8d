package render

import (
	"github.com/DAYGoodTime/rosu-native/internal/pipeline"
)

type Renderer interface {
	Result(q pipeline.Query, r *pipeline.Result) error
	JSON(q pipeline.Query, r *pipeline.Result) error
	Error(err error)
}
