package suggestdb

type DB interface {
	BuildIndex(entries []Entry) error
	Suggest(partialText string, limit int) ([]Suggestion, error)
	GetEntryCount() (uint64, error)
	Close() error
}
