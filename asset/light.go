package asset

import "github.com/achilleasa/pray/scene"

// Read a light definition and bind it to its proxy object. A "null" object
// reference creates an invisible proxy which is added to the lights
// partition; any other reference must name an object of that partition.
func ReadLight(res *Resource, sc *scene.Scene) (*scene.Light, error) {
	r := newLineReader(res)

	if _, err := r.header(); err != nil {
		return nil, err
	}

	l := scene.NewLight("")
	var err error
	if l.Color, err = r.headerVec3(); err != nil {
		return nil, err
	}
	bulbType, err := r.headerCount()
	if err != nil {
		return nil, err
	}
	l.BulbType = uint32(bulbType)
	if l.Range, err = r.headerFloat(); err != nil {
		return nil, err
	}
	if l.Power, err = r.headerFloat(); err != nil {
		return nil, err
	}
	if l.Radius, err = r.headerFloat(); err != nil {
		return nil, err
	}
	l.OrigRadius = l.Radius

	objID, err := r.header()
	if err != nil {
		return nil, err
	}
	if l.ID, err = r.header(); err != nil {
		return nil, err
	}

	var proxy *scene.Object
	if objID == nullRef {
		proxy = scene.NewInvisibleProxy(l)
		if err = sc.AddObject(proxy); err != nil {
			return nil, err
		}
	} else if proxy = sc.Partitions[scene.LightsPartition].ByID(objID); proxy == nil {
		return nil, r.errorf(ErrUnknownObject, "light %q references object %q which is not in the lights partition", l.ID, objID)
	}

	l.Attach(proxy)
	return l, nil
}
