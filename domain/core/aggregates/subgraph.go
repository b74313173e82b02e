package aggregates

// AccountNode is an account in a fund-flow subgraph
type AccountNode struct {
	ID string `json:"id"`
}

// TransferEdge is one SENT_TO relationship in a fund-flow subgraph
type TransferEdge struct {
	Source string  `json:"src"`
	Target string  `json:"dst"`
	TxID   string  `json:"tx_id"`
	Amount float64 `json:"amount"`
}

// SubgraphView is the bounded fund-flow neighbourhood of a seed account
type SubgraphView struct {
	Nodes []AccountNode  `json:"nodes"`
	Edges []TransferEdge `json:"edges"`
}

// AccountDegree counts SENT_TO relationships of one account
type AccountDegree struct {
	InDegree  int `json:"inDeg"`
	OutDegree int `json:"outDeg"`
	Degree    int `json:"degree"`
}

// NewAccountDegree builds the degree summary; Degree is the sum of both directions
func NewAccountDegree(in, out int) AccountDegree {
	return AccountDegree{InDegree: in, OutDegree: out, Degree: in + out}
}
