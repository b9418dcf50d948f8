package port

import "github.com/bnema/gamedesk/internal/domain/action"

// Dispatcher feeds actions into the store.
type Dispatcher interface {
	Dispatch(a action.Action)
}
