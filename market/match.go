package market

// Match is one symbol-search hit. The fields are passed through from the
// vendor as-is; nothing beyond presence is guaranteed.
type Match struct {
	Symbol      string
	Name        string
	Type        string
	Region      string
	MarketOpen  string
	MarketClose string
	Timezone    string
	Currency    string
	MatchScore  string
}
