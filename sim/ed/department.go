package ed

import (
	"fmt"

	"github.com/ed-sim/ed-sim/sim"
)

// Pool names as they appear in logs and traces.
const (
	PoolNurse    = "nurse"
	PoolExamRoom = "exam_room"
	PoolDoctor   = "doctor"
	PoolLabTech  = "lab_tech"
)

// Department owns the four shared resource pools of the emergency department.
type Department struct {
	Nurse    *sim.ResourcePool
	ExamRoom *sim.ResourcePool
	Doctor   *sim.ResourcePool
	LabTech  *sim.ResourcePool
}

// NewDepartment creates the pools on s. A non-positive capacity fails with
// an error wrapping sim.ErrInvalidCapacity.
func NewDepartment(s *sim.Simulator, caps CapacityConfig) (*Department, error) {
	d := &Department{}
	pools := []struct {
		dst      **sim.ResourcePool
		name     string
		capacity int
	}{
		{&d.Nurse, PoolNurse, caps.Nurses},
		{&d.ExamRoom, PoolExamRoom, caps.ExamRooms},
		{&d.Doctor, PoolDoctor, caps.Doctors},
		{&d.LabTech, PoolLabTech, caps.LabTechs},
	}
	for _, p := range pools {
		pool, err := sim.NewResourcePool(s, p.name, p.capacity)
		if err != nil {
			return nil, fmt.Errorf("creating department: %w", err)
		}
		*p.dst = pool
	}
	return d, nil
}

// Pools returns the pools in pathway order.
func (d *Department) Pools() []*sim.ResourcePool {
	return []*sim.ResourcePool{d.Nurse, d.ExamRoom, d.Doctor, d.LabTech}
}
