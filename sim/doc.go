// Package sim provides the discrete-event engine for a corona test lane.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - patient.go: Patient lifecycle (arrived → waiting → in-service, or turned-away)
//   - queue.go: the waiting queue ordered by ComparePatients and the nurse queue
//     ordered by availability
//   - simulator.go: the arrival loop and dispatch of waiting patients to nurses
//
// # Architecture
//
// A day runs in a single goroutine. Patients are taken in (ArrivedAt, Seq) order;
// before each arrival joins the waiting queue, every nurse who is free by then
// samples the most urgent waiting patient. After the last arrival the queue is
// drained. Closing time only stops new arrivals.
//
// Sub-packages:
//   - sim/workload/: patient generation (arrival processes, symptoms, zip codes)
//   - sim/trace/: dispatch decision trace and its summary
//
// # Key Interfaces
//
//   - ServiceTimeSampler: draws the duration of one sample
//
// Randomness flows through PartitionedRNG, so the patient list and the
// sample durations use independent streams derived from one seed.
package sim
