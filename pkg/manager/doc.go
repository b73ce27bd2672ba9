// Package manager defines the per-node-type contract between the
// declarative tree and native views: paired real/shadow view factories,
// registration-time property setter tables with default-value snapshots,
// and the event and constants metadata a node type exports to the
// scripting runtime.
//
// A concrete node type implements ViewManager (usually by embedding
// BaseViewManager) and registers once at process start. Registration
// builds an immutable Descriptor: the resolved module name, the setter
// table, the default snapshot captured from one pristine instance, and
// the validated event set.
package manager
