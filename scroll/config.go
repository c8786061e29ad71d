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

// Йоу, чат! Сьогодні розберемо конфіг сувоїв!
// Він лежить у YAML файлі, а значення шукаються по шляху з крапками,
// наприклад "gravitation.cast-time". Якщо ключа немає у файлі сервера,
// беремо його зі вбудованого defaults.yml. Якщо значення криве
// (рядок замість числа, неіснуюча частинка) - пишемо попередження в лог
// і використовуємо запасне значення. Один поганий параметр не ламає закляття.

package scroll

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultConfig []byte

// DefaultConfig повертає вбудований конфіг, наприклад щоб записати його на диск
func DefaultConfig() []byte { return defaultConfig }

// Config - дерево налаштувань сувоїв
type Config struct {
	log      *zap.Logger
	vocab    Vocabulary
	data     map[string]any // значення з файлу сервера
	defaults map[string]any // вбудовані значення
}

// LoadConfig читає конфіг з файлу. Якщо файлу немає - працюємо на стандартних значеннях
func LoadConfig(log *zap.Logger, path string, vocab Vocabulary) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("Scroll config not found, using defaults", zap.String("path", path))
		data = nil
	} else if err != nil {
		return nil, fmt.Errorf("read scroll config: %w", err)
	}
	return ParseConfig(log, data, vocab)
}

// ParseConfig розбирає YAML і накладає його поверх стандартних значень.
// vocab може бути nil, тоді перевіряється тільки формат ідентифікаторів
func ParseConfig(log *zap.Logger, data []byte, vocab Vocabulary) (*Config, error) {
	var defaults, user map[string]any
	if err := yaml.Unmarshal(defaultConfig, &defaults); err != nil {
		return nil, fmt.Errorf("parse default scroll config: %w", err)
	}
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse scroll config: %w", err)
	}
	return &Config{log: log, vocab: vocab, data: user, defaults: defaults}, nil
}

// Sub повертає секцію конфігу за шляхом
func (c *Config) Sub(path string) Section { return Section{c: c, path: path} }

func (c *Config) invalid(path string, v any) {
	c.log.Warn("Invalid scroll config value, using fallback",
		zap.String("path", path),
		zap.Any("value", v),
	)
}

// Section - вказівник на вузол конфігу. Всі шляхи всередині відносні
type Section struct {
	c    *Config
	path string
}

// Path повертає повний шлях секції
func (s Section) Path() string { return s.path }

// Sub повертає вкладену секцію
func (s Section) Sub(key string) Section { return Section{c: s.c, path: s.join(key)} }

func (s Section) join(key string) string {
	if s.path == "" {
		return key
	}
	return s.path + "." + key
}

// get шукає значення спочатку у файлі сервера, потім у стандартному конфігу.
// Якщо значення сервера не конвертується - попереджаємо і йдемо далі по ланцюжку
func get[T any](s Section, key string, def T, conv func(any) (T, bool)) T {
	path := s.join(key)
	if v, ok := lookup(s.c.data, path); ok {
		if t, ok := conv(v); ok {
			return t
		}
		s.c.invalid(path, v)
	}
	return fallback(s, key, def, conv)
}

// fallback шукає тільки у стандартному конфігу
func fallback[T any](s Section, key string, def T, conv func(any) (T, bool)) T {
	if v, ok := lookup(s.c.defaults, s.join(key)); ok {
		if t, ok := conv(v); ok {
			return t
		}
	}
	return def
}

func (s Section) String(key, def string) string { return get(s, key, def, toString) }
func (s Section) Float(key string, def float64) float64 { return get(s, key, def, toFloat) }
func (s Section) Int(key string, def int) int { return get(s, key, def, toInt) }
func (s Section) Bool(key string, def bool) bool { return get(s, key, def, toBool) }
func (s Section) Strings(key string) []string { return get(s, key, nil, toStrings) }
func (s Section) Ints(key string) []int { return get(s, key, nil, toInts) }

// Duration читає кількість секунд
func (s Section) Duration(key string, def time.Duration) time.Duration {
	sec := s.Float(key, def.Seconds())
	if sec < 0 {
		s.c.invalid(s.join(key), sec)
		return def
	}
	return time.Duration(sec * float64(time.Second))
}

// Ticks читає кількість секунд і переводить у тіки
func (s Section) Ticks(key string, def int) int {
	sec := s.Float(key, float64(def)/20)
	if sec < 0 {
		s.c.invalid(s.join(key), sec)
		return def
	}
	return int(math.Round(sec * 20))
}

// Keys повертає відсортовані ключі вкладеної мапи з обох конфігів
func (s Section) Keys(key string) []string {
	set := make(map[string]struct{})
	for _, m := range []map[string]any{s.c.data, s.c.defaults} {
		if v, ok := lookup(m, s.join(key)); ok {
			if sub, ok := toMap(v); ok {
				for k := range sub {
					set[k] = struct{}{}
				}
			}
		}
	}
	keys := maps.Keys(set)
	slices.Sort(keys)
	return keys
}

// Particle читає секцію частинок {name, count, spread, speed}
func (s Section) Particle(key string, def Particle) Particle {
	sub := s.Sub(key)
	p := Particle{
		Name:   sub.String("name", def.Name),
		Count:  sub.Int("count", def.Count),
		Spread: sub.Float("spread", def.Spread),
		Speed:  sub.Float("speed", def.Speed),
	}
	if !s.c.particleKnown(p.Name) {
		s.c.invalid(sub.join("name"), p.Name)
		p.Name = fallback(sub, "name", def.Name, toString)
	}
	if p.Count < 0 {
		s.c.invalid(sub.join("count"), p.Count)
		p.Count = 0
	}
	return p
}

// Sound читає секцію звуку {name, volume, pitch}
func (s Section) Sound(key string, def Sound) Sound {
	sub := s.Sub(key)
	snd := Sound{
		Name:   sub.String("name", def.Name),
		Volume: float32(sub.Float("volume", float64(def.Volume))),
		Pitch:  float32(sub.Float("pitch", float64(def.Pitch))),
	}
	if !ValidIdentifier(snd.Name) {
		s.c.invalid(sub.join("name"), snd.Name)
		snd.Name = fallback(sub, "name", def.Name, toString)
	}
	return snd
}

// Material читає один блок
func (s Section) Material(key string, def Material) Material {
	m := Material(s.String(key, string(def)))
	if !s.c.materialKnown(m) {
		s.c.invalid(s.join(key), m)
		return Material(fallback(s, key, string(def), toString))
	}
	return m
}

// Materials читає список блоків. Невідомі блоки викидаються,
// а якщо не залишилось жодного - беремо стандартну палітру
func (s Section) Materials(key string, def []Material) []Material {
	var out []Material
	for _, name := range s.Strings(key) {
		m := Material(name)
		if !s.c.materialKnown(m) {
			s.c.invalid(s.join(key), name)
			continue
		}
		out = append(out, m)
	}
	if len(out) > 0 {
		return out
	}
	for _, name := range fallback(s, key, nil, toStrings) {
		out = append(out, Material(name))
	}
	if len(out) > 0 {
		return out
	}
	return def
}

func (c *Config) particleKnown(name string) bool {
	if !ValidIdentifier(name) {
		return false
	}
	return c.vocab == nil || c.vocab.KnownParticle(name)
}

func (c *Config) materialKnown(m Material) bool {
	if !m.Valid() {
		return false
	}
	return c.vocab == nil || c.vocab.KnownMaterial(m)
}

// lookup проходить по дереву мап за шляхом "a.b.c"
func lookup(m map[string]any, path string) (any, bool) {
	var cur any = m
	for _, key := range strings.Split(path, ".") {
		sub, ok := toMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = sub[key]; !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func toStrings(v any) ([]string, bool) {
	switch l := v.(type) {
	case string:
		return []string{l}, true
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func toInts(v any) ([]int, bool) {
	l, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(l))
	for _, e := range l {
		n, ok := toInt(e)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
