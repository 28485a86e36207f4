package suggestdb

const (
	KindProduct  = "product"
	KindCategory = "category"
	KindFarm     = "farm"
)

type Entry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type Suggestion struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}
