package scene

// ObjectSet stores objects in a dense slice. Removed slots are pushed to a
// free list and reused by later insertions so object indices stay stable.
type ObjectSet struct {
	slots []*Object
	free  []uint32
	count int
}

// Insert an object and assign its index.
func (s *ObjectSet) Insert(o *Object) uint32 {
	var index uint32
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[index] = o
	} else {
		index = uint32(len(s.slots))
		s.slots = append(s.slots, o)
	}

	o.Index = index
	s.count++
	return index
}

// Remove the object at index. Returns the removed object or nil if the slot
// was empty.
func (s *ObjectSet) Remove(index uint32) *Object {
	if int(index) >= len(s.slots) || s.slots[index] == nil {
		return nil
	}

	o := s.slots[index]
	s.slots[index] = nil
	s.free = append(s.free, index)
	s.count--
	return o
}

// Get the object at index or nil.
func (s *ObjectSet) Get(index uint32) *Object {
	if int(index) >= len(s.slots) {
		return nil
	}
	return s.slots[index]
}

// Get the number of stored objects.
func (s *ObjectSet) Len() int {
	return s.count
}

// Invoke fn for each stored object in index order. Iteration stops at the
// first error which is returned to the caller.
func (s *ObjectSet) Each(fn func(*Object) error) error {
	for _, o := range s.slots {
		if o == nil {
			continue
		}
		if err := fn(o); err != nil {
			return err
		}
	}
	return nil
}

// Find object by ID.
func (s *ObjectSet) ByID(id string) *Object {
	for _, o := range s.slots {
		if o != nil && o.ID == id {
			return o
		}
	}
	return nil
}

// Find object by name.
func (s *ObjectSet) ByName(name string) *Object {
	for _, o := range s.slots {
		if o != nil && o.Name == name {
			return o
		}
	}
	return nil
}
