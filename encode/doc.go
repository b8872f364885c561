// Package encode turns laid-out documents into bytes for a sink: ANSI for
// terminals, HTML for reports, JSON and TOON for collectors. Tree-capable
// encoders also accept the semantic node tree directly and skip layout.
package encode
