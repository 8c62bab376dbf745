// Package magetasks provides the build tasks behind the Magefile.
//
// It holds the tasks that build, test and lint this repository, and the
// task that runs the .NET recipes configured in the working directory.
// Tasks are grouped into namespaces by the Magefile.
package magetasks
