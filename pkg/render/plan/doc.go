// Package plan renders a plant scene as a top-down SVG.
//
// The view looks straight down the Y axis: world x maps to the right and
// world z maps down the page. The platform square is drawn first, then the
// pipes (stroke width equal to the pipe diameter in world units), then the
// tanks as filled circles, then optional index labels. Output is
// deterministic for a given scene and option set.
//
//	svg := plan.RenderSVG(s, plan.WithScale(30), plan.WithLabels(true))
package plan
