//go:generate go run go.uber.org/mock/mockgen -source=transcript.go -destination=../mocks/mock_transcript_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const transcriptPrefix = "evt:"

type ITranscriptRepository interface {
	Store(record Record) error
	List(name string) ([]Record, error)
}

// Record is one delivered event as kept in the transcript.
// Payload holds the JSON form of the original payload: nil, a string,
// or maps and slices of JSON values.
type Record struct {
	ID      uuid.UUID
	Name    string
	Payload any
	At      time.Time
}

// TranscriptRepository keeps delivered events in badger, usually opened
// in memory since the transcript never outlives the process.
type TranscriptRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit *int
	seq   *atomic.Uint64
}

func NewTranscriptRepository(db *badger.DB, log *slog.Logger, limit *int) TranscriptRepository {
	return TranscriptRepository{db: db, log: log, limit: limit, seq: &atomic.Uint64{}}
}

// Store persists a record under "evt:{timestamp_padded}:{seq_padded}:{name}".
// The zero padding keeps keys in chronological order; the store sequence
// keeps records of the same nanosecond in the order they were stored.
func (t TranscriptRepository) Store(record Record) error {
	key := fmt.Sprintf("%s%019d:%020d:%s", transcriptPrefix, record.At.UnixNano(), t.seq.Add(1), record.Name)
	value, err := toStruct(record)
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List returns the records of one event name in delivery order, every
// record when name is empty. At most limit records are returned when a
// limit is configured.
func (t TranscriptRepository) List(name string) ([]Record, error) {
	var records []Record
	err := t.db.View(func(txn *badger.Txn) error {
		prefix := []byte(transcriptPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if t.limit != nil && len(records) == *t.limit {
				t.log.Debug(fmt.Sprintf("Maximum of %d records reached", *t.limit))
				break
			}
			var value structpb.Struct
			err := it.Item().Value(func(val []byte) error {
				return proto.Unmarshal(val, &value)
			})
			if err != nil {
				return err
			}
			record, err := fromStruct(&value)
			if err != nil {
				return err
			}
			if name != "" && record.Name != name {
				continue
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func toStruct(record Record) (*structpb.Struct, error) {
	payload, err := jsonValue(record.Payload)
	if err != nil {
		return nil, fmt.Errorf("payload of %s: %w", record.Name, err)
	}
	return structpb.NewStruct(map[string]any{
		"id":      record.ID.String(),
		"name":    record.Name,
		"at":      record.At.UTC().Format(time.RFC3339Nano),
		"payload": payload,
	})
}

func fromStruct(value *structpb.Struct) (Record, error) {
	fields := value.AsMap()
	id, err := uuid.Parse(fmt.Sprint(fields["id"]))
	if err != nil {
		return Record{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, fmt.Sprint(fields["at"]))
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:      id,
		Name:    fmt.Sprint(fields["name"]),
		Payload: fields["payload"],
		At:      at,
	}, nil
}

// jsonValue converts a domain payload to the generic values structpb accepts.
func jsonValue(payload any) (any, error) {
	if payload == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var value any
	if err = json.Unmarshal(bytes, &value); err != nil {
		return nil, err
	}
	return value, nil
}
