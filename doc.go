// Package grove generates low-poly procedural vegetation into a small
// retained-mode 3D scene graph, with an optional [Ebitengine] preview.
//
// # Quick start
//
// Build a forest from a seeded random source and preview it with [Run]:
//
//	rng := grove.NewRand(42)
//	forest, err := grove.NewForest(grove.DefaultForestConfig(), rng)
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := grove.NewScene()
//	scene.Root().AddChild(forest.Node)
//	scene.AddUpdater(func(dt float64) { forest.Update(dt, 1) })
//	grove.Run(scene, grove.RunConfig{Title: "Forest", Width: 960, Height: 640})
//
// Nothing outside the preview touches the GPU: the generators only produce
// [Node]s and [Mesh]es, so they can run in tests, tools or on a server.
//
// # Randomness
//
// Every builder takes a [Rand]. Two runs with Rands built by [NewRand] from
// the same seed produce identical geometry. A Rand is not safe for
// concurrent use; give each goroutine its own.
//
// # Building blocks
//
// A tree is assembled bottom-up:
//
//   - [NewTrunkProfile] samples a sinusoidal radius-versus-height curve and
//     [Revolve] turns it into a closed surface of revolution.
//   - [PlanAttachments] picks trunk vertices in height bands for branches,
//     leaves and fruit; [Orientation] turns a child's up axis onto the
//     surface normal there.
//   - [NewBranch] and [NewFoliage] build the decorations, and [ApplyNoise]
//     perturbs vertices and recomputes normals.
//   - [BuildTrunc] runs the whole pipeline from [TruncParams]; [NewTrunc]
//     derives the parameters from a complexity flag.
//
// [NewTree] wraps a trunc (or a box-cluster "block" tree) with placement,
// scale and an idle sway, and [NewForest] lays trees out under a minimum
// spacing. Forest configs can be loaded from YAML with [LoadForestConfig].
//
// # Errors
//
// Builders return errors wrapping [ErrInvalidParameter] for out-of-range
// inputs; test with errors.Is. Scene-graph misuse (nil children, cycles)
// panics. [SetDebugMode] adds disposed-node checks and prints forest build
// stats to stderr.
//
// # Events
//
// Set [ForestConfig].Sink to receive a [GrowthEvent] per placed tree. The
// grove/ecs sub-module adapts this to a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package grove
