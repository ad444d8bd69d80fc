// Package descriptor defines the configuration-page model consumed by the
// watch companion settings host. A Descriptor is an ordered list of Field
// values: a leading heading, sections holding toggles and color pickers, and a
// trailing submit button. Fields serialise to the host's JSON array format
// (type, messageKey, label, defaultValue, allowGray, items) so the output of
// json.Marshal can be handed to the host unchanged. Validate enforces the
// structural rules the host and the watch application rely on: heading first,
// submit last, unique message keys, hex color defaults.
package descriptor
