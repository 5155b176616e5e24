// Package world runs the particle field.
//
// A [World] owns the particles, the pointer model, the collision detector
// and the compute kernel. Front-ends forward input events to its gesture
// methods and call [World.Step] once per frame:
//
//	w, err := world.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	if err := w.Setup(field.Extent{Width: 1280, Height: 800}); err != nil {
//	    return err
//	}
//	for range ticks {
//	    w.Step()
//	    w.Draw(canvas)
//	}
//
// [Driver] paces steps at a fixed frame rate for headless runs and
// [Sweep] checks reset convergence over many seeds in parallel.
//
// # Thread Safety
//
// A World is not safe for concurrent use. Steps and gestures must come
// from one goroutine, usually the render loop.
package world
