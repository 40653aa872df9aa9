package usercache

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SnapshotSchemaVersion is an exported constant or variable used by the credential service.
const SnapshotSchemaVersion = 1

var errSnapshotSchema = errors.New("unsupported snapshot schema version")

// snapshot is the wire form of a cached user record. The schema version is
// explicit so that decoding an entry written by an incompatible release
// degrades to a cache miss instead of a corrupt read.
type snapshot struct {
	SchemaVersion int  `json:"v"`
	User          User `json:"user"`
}

func encodeSnapshot(user *User) ([]byte, error) {
	if user == nil {
		return nil, errors.New("cannot snapshot a nil user")
	}
	return json.Marshal(snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		User:          *user,
	})
}

func decodeSnapshot(data []byte) (*User, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return nil, fmt.Errorf("%w: %d", errSnapshotSchema, snap.SchemaVersion)
	}
	return &snap.User, nil
}
