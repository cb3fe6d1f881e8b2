// Package widget holds the built-in handlers: facet roots (component,
// dialogs, edit configs, html tag), fields and widgets, containers and the
// repeatable rewrite.
package widget
