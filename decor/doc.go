// Package decor applies reusable transformations to formatted documents
// before layout. Decorators are classed as content, structural, or visual,
// and Compose fixes the application order so the same registration set
// always produces the same tree.
package decor
