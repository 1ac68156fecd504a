package model

// ReceiptLog is one event log entry of a transaction receipt.
type ReceiptLog struct {
	Address  string
	Topics   []string
	Data     string
	LogIndex int64
	Removed  bool
}

// Receipt is the subset of a transaction receipt the classifier relies on.
type Receipt struct {
	TxHash            string
	BlockNumber       int64
	From              string
	To                string
	Status            string
	GasUsed           string // hex quantity
	EffectiveGasPrice string // hex quantity
	Logs              []ReceiptLog
}

// TxEnvelope carries the sender and recipient of a transaction.
type TxEnvelope struct {
	Hash string
	From string
	To   string
}
