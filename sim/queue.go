// Implements the two priority structures of the test lane:
// the WaitQueue of patients and the NurseQueue of nurses.

package sim

import (
	"container/heap"
	"fmt"
	"strings"
)

// patientHeap implements heap.Interface over ComparePatients.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type patientHeap []*Patient

func (h patientHeap) Len() int           { return len(h) }
func (h patientHeap) Less(i, j int) bool { return AdmittedBefore(h[i], h[j]) }
func (h patientHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *patientHeap) Push(x any) {
	*h = append(*h, x.(*Patient))
}

func (h *patientHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return item
}

// WaitQueue holds the patients that have arrived but are not yet being sampled.
// Dequeue always yields the first patient in admission order.
type WaitQueue struct {
	heap patientHeap
}

// Enqueue adds an arrived patient and marks it waiting.
func (wq *WaitQueue) Enqueue(p *Patient) {
	if p == nil {
		panic("Enqueue: patient must not be nil")
	}
	p.State = StateWaiting
	heap.Push(&wq.heap, p)
}

// Dequeue removes and returns the first patient in admission order.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Patient {
	if len(wq.heap) == 0 {
		return nil
	}
	return heap.Pop(&wq.heap).(*Patient)
}

// Peek returns the first patient in admission order without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Patient {
	if len(wq.heap) == 0 {
		return nil
	}
	return wq.heap[0]
}

// Len returns the number of waiting patients.
func (wq *WaitQueue) Len() int {
	return len(wq.heap)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range wq.heap {
		sb.WriteString(p.ID)
		if i < len(wq.heap)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

type queuedNurse struct {
	nurse *Nurse
	seq   uint64
}

// nurseHeap orders nurses by AvailableAt, ties broken by insertion sequence.
type nurseHeap []queuedNurse

func (h nurseHeap) Len() int { return len(h) }
func (h nurseHeap) Less(i, j int) bool {
	if h[i].nurse.AvailableAt != h[j].nurse.AvailableAt {
		return h[i].nurse.AvailableAt < h[j].nurse.AvailableAt
	}
	return h[i].seq < h[j].seq
}
func (h nurseHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nurseHeap) Push(x any) {
	*h = append(*h, x.(queuedNurse))
}

func (h *nurseHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// NurseQueue offers the nurse that becomes available soonest.
// A nurse's AvailableAt must not change while the nurse is queued.
type NurseQueue struct {
	heap    nurseHeap
	nextSeq uint64
}

// Enqueue (re)inserts a nurse according to its current AvailableAt.
func (nq *NurseQueue) Enqueue(n *Nurse) {
	if n == nil {
		panic("Enqueue: nurse must not be nil")
	}
	heap.Push(&nq.heap, queuedNurse{nurse: n, seq: nq.nextSeq})
	nq.nextSeq++
}

// Dequeue removes and returns the earliest available nurse, or nil.
func (nq *NurseQueue) Dequeue() *Nurse {
	if len(nq.heap) == 0 {
		return nil
	}
	return heap.Pop(&nq.heap).(queuedNurse).nurse
}

// Peek returns the earliest available nurse without removing it, or nil.
func (nq *NurseQueue) Peek() *Nurse {
	if len(nq.heap) == 0 {
		return nil
	}
	return nq.heap[0].nurse
}

// Len returns the number of queued nurses.
func (nq *NurseQueue) Len() int {
	return len(nq.heap)
}

func (nq *NurseQueue) String() string {
	parts := make([]string, 0, len(nq.heap))
	for _, qn := range nq.heap {
		parts = append(parts, fmt.Sprintf("%s@%s", qn.nurse.Name, qn.nurse.AvailableAt))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
