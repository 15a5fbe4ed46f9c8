// Package htmlgen builds HTML documents and their stylesheets in code.
//
// Callers assemble an element tree (tags, attributes, text) and a tree of
// nested CSS rules, then serialize both: the HTML renderer emits indented,
// escaped markup and the CSS renderer either keeps the native nesting syntax
// or flattens the nested rules into standalone selector blocks, resolving the
// ampersand parent reference.
package htmlgen
