// Package network holds the data model shared by every stage of the
// material flow pipeline: materials, processes, signed throughput
// records, per-material quantity tables, material→material edge tables
// and product groups.
//
// Tables are insertion-ordered (Table[K]) so that everything derived
// from them (edge orientation, node order, exports) is reproducible for
// the same input. Sign convention for throughput: a negative value means
// the material is consumed by the process, a positive value means it is
// produced; zero values are never stored.
package network
