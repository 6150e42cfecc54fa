package entity

// Renderer handles rendering simulation entities
type Renderer interface {
	RenderBody(body *Body)
	RenderShip(ship *Ship)
	Clear()
	Present()
}

// Render submits the body to the renderer
func (b *Body) Render(r Renderer) {
	r.RenderBody(b)
}

// Render submits the ship to the renderer
func (s *Ship) Render(r Renderer) {
	r.RenderShip(s)
}
