package plant

// RoutePipes connects consecutive tanks with straight segments between their
// centroids: tank i to tank i+1 for every i. The result is a simple path in
// placement order; a single tank yields no pipes.
func RoutePipes(tanks []Tank, radius float64) []Pipe {
	if len(tanks) < 2 {
		return []Pipe{}
	}
	pipes := make([]Pipe, len(tanks)-1)
	for i := range pipes {
		pipes[i] = Pipe{
			Start:  tanks[i].Position,
			End:    tanks[i+1].Position,
			Radius: radius,
		}
	}
	return pipes
}
