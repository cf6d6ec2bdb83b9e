// Package testing provides a harness for exercising element trees.
//
// # Quick Start
//
// Create a tester, mount a root, pump, and make assertions:
//
//	func TestMyPanel(t *testing.T) {
//	    tester := ecstest.NewTesterWithT(t)
//	    root := tester.Mount(core.Elem(MyPanel{}))
//	    tester.Pump()
//
//	    if !tester.Find(ecstest.ByType[Label]()).Exists() {
//	        t.Error("expected a label")
//	    }
//
//	    tester.Send(root, Toggle{})
//	    tester.Pump()
//	    if tester.Count(ecs.Unmounted) != 1 {
//	        t.Error("expected the label to be removed")
//	    }
//	}
//
// The tester publishes lifecycle events and collects them after every Pump,
// so tests can count mounts, replacements, and unmounts.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import ecstest "github.com/go-drift/ecstree/pkg/testing"
package testing
