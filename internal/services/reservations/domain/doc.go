// Package domain defines the reservations domain model: events with a
// publishing lifecycle and finite seat capacity, and registrations that
// claim seats on them. Status transitions for both entities are closed
// tables; everything else in the service trusts them.
package domain
