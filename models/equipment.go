// ABOUTME: Category-independent view over equipment items
// ABOUTME: Normalizes usage parameters so the energy formula is written once

package models

// Usage is the set of parameters the energy formula needs from any item.
// Absent numeric fields are zero.
type Usage struct {
	HoursPerDay   float64
	DaysPerWeek   float64
	RatedPowerW   float64
	Quantity      float64
	AreaM2        float64
	Occupancy     float64
	RoomName      string
	EquipmentName string
	Remarks       string
}

// Equipment is implemented by every inventory item kind
type Equipment interface {
	Category() Category
	Usage() Usage
	ItemID() string
}

func (a AirConditioningItem) Category() Category { return CategoryAirConditioning }
func (a AirConditioningItem) ItemID() string     { return a.ID }

func (a AirConditioningItem) Usage() Usage {
	return Usage{
		HoursPerDay:   a.DurationPerDay,
		DaysPerWeek:   a.DaysPerWeek,
		RatedPowerW:   a.InputPowerW,
		Quantity:      a.Quantity,
		AreaM2:        a.RoomLengthM * a.RoomWidthM,
		Occupancy:     a.Occupancy,
		RoomName:      a.RoomName,
		EquipmentName: a.TypeLabel(),
		Remarks:       string(a.Remarks),
	}
}

// TypeLabel returns the AC type, or the custom label when the type is Other
func (a AirConditioningItem) TypeLabel() string {
	if a.ACType == ACTypeOther && a.OtherACType != "" {
		return a.OtherACType
	}
	return string(a.ACType)
}

func (l LightingItem) Category() Category { return CategoryLighting }
func (l LightingItem) ItemID() string     { return l.ID }

func (l LightingItem) Usage() Usage {
	return Usage{
		HoursPerDay:   l.DurationPerDay,
		DaysPerWeek:   l.DaysPerWeek,
		RatedPowerW:   l.PowerW,
		Quantity:      l.Quantity,
		AreaM2:        l.RoomLengthM * l.RoomWidthM,
		Occupancy:     l.Occupancy,
		RoomName:      l.RoomName,
		EquipmentName: l.LampDescription,
		Remarks:       string(l.Remarks),
	}
}

func (o OtherEquipmentItem) Category() Category { return CategoryOtherEquipment }
func (o OtherEquipmentItem) ItemID() string     { return o.ID }

// Usage has no area: other equipment rows carry no room dimensions
func (o OtherEquipmentItem) Usage() Usage {
	return Usage{
		HoursPerDay:   o.DurationPerDay,
		DaysPerWeek:   o.DaysPerWeek,
		RatedPowerW:   o.PowerW,
		Quantity:      o.Quantity,
		Occupancy:     o.Occupancy,
		RoomName:      o.RoomName,
		EquipmentName: o.EquipmentName,
		Remarks:       string(o.Remarks),
	}
}

// Items returns every item of the snapshot in report order
func (s AuditSnapshot) Items() []Equipment {
	items := make([]Equipment, 0, len(s.AirConditioning)+len(s.Lighting)+len(s.OtherEquipment))
	for _, it := range s.AirConditioning {
		items = append(items, it)
	}
	for _, it := range s.Lighting {
		items = append(items, it)
	}
	for _, it := range s.OtherEquipment {
		items = append(items, it)
	}
	return items
}
