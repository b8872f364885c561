// Package format turns events into document trees. Formatters decide which
// node kinds an event becomes and which semantic tags the pieces carry;
// they never assign colors, which is the job of visual decorators.
package format
