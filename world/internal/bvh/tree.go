// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


// Йоу, чат! BVH - дерево коробок: кожен вузол містить коробку, що накриває
// коробки всіх його дітей. Запит "хто бачить цю точку" заходить тільки в ті
// гілки, чия коробка цю точку містить, а не перебирає всіх гравців.

package bvh

import "fmt"

// Node - вузол дерева. Value має сенс тільки в листі
type Node[V any] struct {
	Box   Box
	Value V

	parent *Node[V]
	kids   [2]*Node[V] // у листа обидва nil
}

func (n *Node[V]) leaf() bool { return n.kids[0] == nil }

// sibling повертає другу дитину батька
func (n *Node[V]) sibling() *Node[V] {
	p := n.parent
	if p.kids[0] == n {
		return p.kids[1]
	}
	return p.kids[0]
}

func (n *Node[V]) replaceKid(old, kid *Node[V]) {
	if n.kids[0] == old {
		n.kids[0] = kid
	} else {
		n.kids[1] = kid
	}
	kid.parent = n
}

func (n *Node[V]) refit() {
	n.Box = n.kids[0].Box.Union(n.kids[1].Box)
}

// Tree - BVH. Нульове значення готове до роботи
type Tree[V any] struct {
	root *Node[V]
	size int
}

// Len - кількість листів
func (t *Tree[V]) Len() int { return t.size }

// Insert додає лист і повертає його вузол для Update і Remove
func (t *Tree[V]) Insert(box Box, value V) *Node[V] {
	n := &Node[V]{Box: box, Value: value}
	t.insert(n)
	t.size++
	return n
}

// Remove виймає лист з дерева
func (t *Tree[V]) Remove(n *Node[V]) V {
	t.detach(n)
	t.size--
	return n.Value
}

// Update переносить лист у нову коробку. Вузол лишається той самий
func (t *Tree[V]) Update(n *Node[V], box Box) *Node[V] {
	t.detach(n)
	n.Box = box
	t.insert(n)
	return n
}

// Visit обходить листи, коробки яких проходять test.
// Гілка, що не пройшла test, пропускається цілком. fn повертає false, щоб зупинитись
func (t *Tree[V]) Visit(test func(Box) bool, fn func(*Node[V]) bool) {
	if t.root == nil {
		return
	}
	stack := []*Node[V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !test(n.Box) {
			continue
		}
		if n.leaf() {
			if !fn(n) {
				return
			}
			continue
		}
		stack = append(stack, n.kids[1], n.kids[0])
	}
}

// AtPoint обходить листи, коробки яких містять p
func (t *Tree[V]) AtPoint(p [3]float64, fn func(*Node[V]) bool) {
	t.Visit(func(b Box) bool { return b.Contains(p) }, fn)
}

// Overlapping обходить листи, коробки яких перетинають box
func (t *Tree[V]) Overlapping(box Box, fn func(*Node[V]) bool) {
	t.Visit(box.Intersects, fn)
}

func (t *Tree[V]) insert(n *Node[V]) {
	n.parent = nil
	if t.root == nil {
		t.root = n
		return
	}

	// спускаємось туди, де новий лист найменше роздуває коробки
	sib := t.root
	for !sib.leaf() {
		merged := sib.Box.Union(n.Box).Area()
		here := 2 * merged
		inherited := 2 * (merged - sib.Box.Area())
		c0 := inherited + descendCost(sib.kids[0], n.Box)
		c1 := inherited + descendCost(sib.kids[1], n.Box)
		if here < c0 && here < c1 {
			break
		}
		if c0 <= c1 {
			sib = sib.kids[0]
		} else {
			sib = sib.kids[1]
		}
	}

	branch := &Node[V]{parent: sib.parent}
	if sib.parent == nil {
		t.root = branch
	} else {
		sib.parent.replaceKid(sib, branch)
	}
	branch.kids = [2]*Node[V]{sib, n}
	sib.parent, n.parent = branch, branch
	branch.refit()
	t.refitUp(branch.parent)
}

// descendCost - на скільки виросте площа, якщо лист піде в гілку kid
func descendCost[V any](kid *Node[V], box Box) float64 {
	merged := kid.Box.Union(box).Area()
	if kid.leaf() {
		return merged
	}
	return merged - kid.Box.Area()
}

func (t *Tree[V]) detach(n *Node[V]) {
	p := n.parent
	if p == nil {
		t.root = nil
		return
	}
	sib := n.sibling()
	grand := p.parent
	if grand == nil {
		t.root = sib
		sib.parent = nil
	} else {
		grand.replaceKid(p, sib)
		t.refitUp(grand)
	}
	n.parent = nil
}

// refitUp оновлює коробки від n до кореня і по дорозі пробує повороти
func (t *Tree[V]) refitUp(n *Node[V]) {
	for ; n != nil; n = n.parent {
		n.refit()
		t.rotate(n)
	}
}

// rotate міняє дитину n з її дядьком, якщо коробка n від цього зменшується
func (t *Tree[V]) rotate(n *Node[V]) {
	if n.leaf() || n.parent == nil {
		return
	}
	uncle := n.sibling()
	best, area := -1, n.Box.Area()
	for i := range n.kids {
		if a := n.kids[1-i].Box.Union(uncle.Box).Area(); a < area {
			best, area = i, a
		}
	}
	if best < 0 {
		return
	}
	// kids[best] піднімається на місце дядька, дядько спускається в n
	kid := n.kids[best]
	n.parent.replaceKid(uncle, kid)
	n.replaceKid(kid, uncle)
	n.refit()
}

func (t *Tree[V]) String() string { return t.root.String() }

func (n *Node[V]) String() string {
	switch {
	case n == nil:
		return "{}"
	case n.leaf():
		return fmt.Sprint(n.Value)
	default:
		return fmt.Sprintf("{%v, %v}", n.kids[0], n.kids[1])
	}
}
