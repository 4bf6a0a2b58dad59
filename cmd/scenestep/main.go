// Command scenestep builds a scene without opening a window, advances it a
// number of frames and prints every entity's resolved world position.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/milk9111/hierscenes/common"
	"github.com/milk9111/hierscenes/ecs"
	"github.com/milk9111/hierscenes/ecs/component"
	"github.com/milk9111/hierscenes/ecs/entity"
	"github.com/milk9111/hierscenes/ecs/render"
	"github.com/milk9111/hierscenes/ecs/system"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func main() {
	log := common.NewLogger(os.Getenv("HIER_LOG_LEVEL"))
	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		log.Fatal().Err(err).Msg("scenestep")
	}
}

func run(args []string, out io.Writer, log zerolog.Logger) error {
	fs := flag.NewFlagSet("scenestep", flag.ContinueOnError)
	fs.SetOutput(out)
	sceneName := fs.String("scene", "scene.yaml", "scene file in scenes/")
	frames := fs.Int("frames", 60, "frames to simulate")
	tps := fs.Int("tps", common.DefaultTPS, "simulated frames per second")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *frames < 0 || *tps <= 0 {
		return eris.Errorf("frames must be >= 0 and tps > 0, got %d and %d", *frames, *tps)
	}

	w := ecs.NewWorld()
	scene, err := entity.LoadScene(w, *sceneName, render.NewRegistry())
	if err != nil {
		return err
	}

	sched := ecs.NewScheduler(
		system.NewRotationAnimatorSystem(scene.Animators...),
		system.NewTransformSystem(log),
	)
	dt := 1.0 / float64(*tps)
	for i := 0; i < *frames; i++ {
		if err := sched.Update(w, dt); err != nil {
			return eris.Wrapf(err, "frame %d", i)
		}
	}
	if *frames == 0 {
		system.Propagate(w, nil)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "entity\tparent\tx\ty\tz\n")
	for _, e := range ecs.HierarchyOrder(w) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		p := t.WorldPosition()
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.3f\n", nameOf(w, e), parentName(w, e), p.X(), p.Y(), p.Z())
	}
	return tw.Flush()
}

func nameOf(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	return e.String()
}

func parentName(w *ecs.World, e ecs.Entity) string {
	p, ok := ecs.Parent(w, e)
	if !ok {
		return "-"
	}
	return nameOf(w, p)
}
