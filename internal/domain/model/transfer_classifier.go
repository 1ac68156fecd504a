package model

// ClassifyTransferGroup maps the directions present in a transaction group
// onto a plain transfer type. Groups carrying both directions are swap
// candidates and never classify as a transfer.
func ClassifyTransferGroup(hasOutbound, hasInbound bool) (TransferType, bool) {
	switch {
	case hasInbound && !hasOutbound:
		return TransferDeposit, true
	case hasOutbound && !hasInbound:
		return TransferWithdraw, true
	default:
		return "", false
	}
}
