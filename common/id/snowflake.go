package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new time-ordered int64 ID. Init must be called first.
func New() int64 {
	return node.Generate().Int64()
}

// NewString returns a new ID in its base-10 string form, as used in headers and logs.
func NewString() string {
	return node.Generate().String()
}
