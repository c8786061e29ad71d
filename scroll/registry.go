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

package scroll

import (
	"go.uber.org/zap"
)

// Effect - один вид сувою. Кожен сувій реалізує тільки свою унікальну логіку,
// а все спільне бере з Service
type Effect interface {
	Type() Type
	// Interact викликається коли гравець клікає з сувоєм цього типу в руці
	Interact(p Player, it Item, click Click)
	// Close скасовує всі активні касти і польоти
	Close()
}

// Registry знаходить ефект за тегом предмета в руці
type Registry struct {
	log     *zap.Logger
	effects map[Type]Effect
	order   []Type
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{log: log, effects: make(map[Type]Effect)}
}

// Register додає ефект. Повторна реєстрація того самого типу замінює попередній
func (r *Registry) Register(e Effect) {
	if _, ok := r.effects[e.Type()]; !ok {
		r.order = append(r.order, e.Type())
	}
	r.effects[e.Type()] = e
}

// Lookup повертає ефект за типом
func (r *Registry) Lookup(t Type) (Effect, bool) {
	e, ok := r.effects[t]
	return e, ok
}

// Types повертає типи в порядку реєстрації
func (r *Registry) Types() []Type {
	return append([]Type(nil), r.order...)
}

// Interact перевіряє предмет у руці гравця і передає клік потрібному ефекту.
// Повертає true якщо предмет був сувоєм
func (r *Registry) Interact(p Player, click Click) (handled bool) {
	it := p.HeldItem()
	t, ok := ItemType(it)
	if !ok {
		return false
	}
	e, ok := r.effects[t]
	if !ok {
		r.log.Debug("Unknown scroll type in hand",
			zap.String("player", p.Name()),
			zap.String("type", string(t)),
		)
		return false
	}
	defer func() {
		if v := recover(); v != nil {
			handled = true
			r.log.Warn("Scroll interaction failed",
				zap.String("player", p.Name()),
				zap.String("type", string(t)),
				zap.Any("panic", v),
			)
		}
	}()
	e.Interact(p, it, click)
	return true
}

// Close закриває всі ефекти в зворотному порядку
func (r *Registry) Close() {
	for i := len(r.order) - 1; i >= 0; i-- {
		r.effects[r.order[i]].Close()
	}
}
