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

// Йоу, чат! Трохи лінійної алгебри для наших ефектів.
// Майнкрафт рахує кути так: yaw - поворот навколо вертикалі (0 = дивимось на +Z),
// pitch - нахил голови (додатній = вниз). Звідси і всі формули нижче.

package scroll

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LookVector перетворює yaw і pitch (в градусах) у напрямок погляду
func LookVector(yaw, pitch float64) mgl64.Vec3 {
	y, p := mgl64.DegToRad(yaw), mgl64.DegToRad(pitch)
	return mgl64.Vec3{
		-math.Sin(y) * math.Cos(p),
		-math.Sin(p),
		math.Cos(y) * math.Cos(p),
	}
}

// YawPitch - обернена до LookVector функція, але повертає радіани
func YawPitch(dir mgl64.Vec3) (yaw, pitch float64) {
	dir = dir.Normalize()
	return math.Atan2(-dir[0], dir[2]), math.Asin(mgl64.Clamp(-dir[1], -1, 1))
}

// Rotation будує матрицю, яка переводить локальну систему координат
// (де +Z - це "вперед") у світову, повернуту на yaw і pitch (радіани).
// Спочатку нахиляємо навколо X, потім повертаємо навколо Y
func Rotation(yaw, pitch float64) mgl64.Mat3 {
	return mgl64.Rotate3DY(-yaw).Mul3(mgl64.Rotate3DX(pitch))
}

// Basis повертає два одиничні вектори, перпендикулярні до n і один до одного.
// Разом з n вони утворюють площину, на якій малюємо кола і лінії
func Basis(n mgl64.Vec3) (right, up mgl64.Vec3) {
	n = n.Normalize()
	ref := mgl64.Vec3{0, 1, 0}
	if math.Abs(n.Dot(ref)) > 0.99 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	right = n.Cross(ref).Normalize()
	up = right.Cross(n).Normalize()
	return
}

// HorizontalDistance - відстань між точками без урахування висоти
func HorizontalDistance(a, b mgl64.Vec3) float64 {
	dx, dz := a[0]-b[0], a[2]-b[2]
	return math.Sqrt(dx*dx + dz*dz)
}
