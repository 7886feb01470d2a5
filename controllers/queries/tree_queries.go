package queries

type TreeQuery struct {
	Depth int `query:"depth"`
}
