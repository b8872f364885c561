// Package core defines the event model shared by every pipeline stage:
// severity levels, key/value fields, and the Event record that formatters
// turn into renderable documents. It sits below format, decor, encode, and
// sink so all of them can exchange events without importing each other.
package core
