package client

import (
	"encoding/json"

	"github.com/morezero/gamestats/pkg/dispatcher"
)

// Callback receives either an error or the decoded body of a call.
type Callback func(err error, data json.RawMessage)

// Deliver hands an accessor's return values to cb. A nil cb is a no-op.
// Validation and contract errors and failed outcomes all arrive as err.
func Deliver(outcome *dispatcher.Outcome, err error, cb Callback) {
	if cb == nil {
		return
	}
	if err != nil {
		cb(err, nil)
		return
	}
	data, err := outcome.Result()
	cb(err, data)
}
