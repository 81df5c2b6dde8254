// Package rename implements bulk file-extension renaming in directory trees.
// A scan walks the roots and plans one rename per matching file; applying the plan issues one os.Rename per file, sequentially.
// Nothing else on disk is touched and no references to the renamed files are updated.
package rename
