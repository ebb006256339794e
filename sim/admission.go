package sim

// ComparePatients is the admission order of the waiting queue.
// It returns a negative number when a must be sampled before b, a positive
// number when b goes first, and zero only when a and b are the same patient.
//
// Order by: priority tier (priority first) → arrival time → Seq.
// Seq makes the order total, so patients arriving in the same second are
// admitted in generation order regardless of heap layout.
func ComparePatients(a, b *Patient) int {
	if a.Priority != b.Priority {
		if a.Priority {
			return -1
		}
		return 1
	}
	if c := a.ArrivedAt.Compare(b.ArrivedAt); c != 0 {
		return c
	}
	switch {
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	default:
		return 0
	}
}

// AdmittedBefore reports whether a precedes b in the admission order.
func AdmittedBefore(a, b *Patient) bool {
	return ComparePatients(a, b) < 0
}
