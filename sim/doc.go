// Package sim provides the discrete-event simulation kernel used by the
// emergency department model.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - simulator.go: the logical clock, the event queue and RunUntil
//   - process.go: cooperative processes and the Await values they yield
//   - resource.go: finite-capacity pools with FIFO wait queues
//
// # Architecture
//
// The kernel knows nothing about patients. Domain logic lives in
// sub-packages:
//   - sim/ed/: department, patient pathway and arrival generator
//   - sim/workload/: inter-arrival and service-time samplers
//   - sim/records/: completed patient records and their aggregates
//   - sim/trace/: resource decision trace recording
//
// # Execution Model
//
// Exactly one process runs at a time. A process only gives up control by
// returning an Await from Resume: a timeout, a pool acquisition, or Done.
// Events with equal fire times execute in the order they were scheduled,
// so a run is fully determined by its seed and configuration.
package sim
