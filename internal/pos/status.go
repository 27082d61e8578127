package pos

// NextStatus returns the successor in the fixed preparation sequence
// NOVO → EM_PREPARO → PRONTO → CONCLUIDO. CONCLUIDO is terminal and maps to
// itself. PAGO and unknown values do not advance: the function is total and
// a no-op outside the sequence.
func NextStatus(s Status) Status {
	switch s {
	case StatusNovo:
		return StatusEmPreparo
	case StatusEmPreparo:
		return StatusPronto
	case StatusPronto:
		return StatusConcluido
	case StatusConcluido:
		return StatusConcluido
	}
	return s
}
