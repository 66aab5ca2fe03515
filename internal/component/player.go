// internal/component/player.go
package component

// Player хранит экономику игрока: деньги и жизни.
type Player struct {
	Money int
	Lives int
}

// Spend списывает деньги, если их хватает
func (p *Player) Spend(amount int) bool {
	if amount > p.Money {
		return false
	}
	p.Money -= amount
	return true
}

// Earn начисляет деньги
func (p *Player) Earn(amount int) {
	p.Money += amount
}

// LoseLife отнимает одну жизнь; возвращает true, если жизни кончились
func (p *Player) LoseLife() bool {
	if p.Lives > 0 {
		p.Lives--
	}
	return p.Lives == 0
}
