// pkg/grid/solver.go
package grid

import "container/heap"

// Solve выполняет обратный многоисточниковый проход Дейкстры от sources.
// Рёбра единичные, поэтому результат совпадает с BFS. Непроходимые клетки
// никогда не релаксируются и остаются с бесконечным расстоянием.
// Метки сетки не меняются: функция чистая и возвращает новый массив.
func Solve(g *Grid, sources []int, walkable func(idx int) bool) []Label {
	labels := make([]Label, len(g.Cells))
	for i := range labels {
		labels[i] = unreachable
	}

	pq := &g.queue
	*pq = (*pq)[:0]
	seq := 0
	for _, src := range sources {
		if !g.Valid(src) || !walkable(src) || labels[src].Distance == 0 {
			continue
		}
		labels[src] = Label{Distance: 0, Parent: NoCell}
		heap.Push(pq, node{index: src, cost: 0, seq: seq})
		seq++
	}

	for pq.Len() > 0 {
		current := heap.Pop(pq).(node)
		if current.cost > labels[current.index].Distance {
			continue // устаревшая запись
		}
		for _, n := range g.Cells[current.index].Adjacent {
			if n == NoCell || !walkable(n) {
				continue
			}
			newCost := current.cost + 1
			if newCost < labels[n].Distance {
				labels[n] = Label{Distance: newCost, Parent: current.index}
				heap.Push(pq, node{index: n, cost: newCost, seq: seq})
				seq++
			}
		}
	}
	return labels
}

// Recompute пересчитывает метки одного ключа по текущей занятости
func (g *Grid) Recompute(key Key) {
	labels := Solve(g, g.Exits[key], g.Walkable)
	for i := range g.Cells {
		g.Cells[i].Labels[key] = labels[i]
	}
}

// RecomputeAll пересчитывает оба набора меток
func (g *Grid) RecomputeAll() {
	for k := Key(0); k < KeyCount; k++ {
		g.Recompute(k)
	}
}

// Path возвращает цепочку клеток от from до выхода по родителям, nil если пути нет
func (g *Grid) Path(from int, key Key) []int {
	if g.Distance(from, key) < 0 {
		return nil
	}
	path := []int{from}
	for cur := g.Parent(from, key); cur != NoCell; cur = g.Parent(cur, key) {
		path = append(path, cur)
	}
	return path
}

// priorityQueue: очередь с приоритетом для решателя.
// При равной стоимости порядок FIFO по seq.
type priorityQueue []node

type node struct {
	index int
	cost  int
	seq   int
}

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(node))
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
