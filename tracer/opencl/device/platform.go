package device

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jgillich/go-opencl/cl"
)

// Information about a system's opencl platform and supported devices.
type PlatformInfo struct {
	Profile    string
	Version    string
	Name       string
	Vendor     string
	Extensions string
	Devices    DeviceList
}

func (pl PlatformInfo) String() string {
	var buf bytes.Buffer

	buf.WriteString(
		fmt.Sprintf(
			"Version:    %s\nName:       %s\nVendor:     %s\nExtensions: %s\nDevices:\n",
			pl.Version,
			pl.Name,
			pl.Vendor,
			pl.Extensions,
		),
	)

	for dIdx, d := range pl.Devices {
		buf.WriteString(fmt.Sprintf("  Device %02d:\n", dIdx))
		buf.WriteString(indentRegex.ReplaceAllString(d.String(), "    "))
		buf.WriteString("\n\n")
	}

	return buf.String()
}

// Get information about supported opencl platforms and devices.
func GetPlatformInfo() ([]PlatformInfo, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, fmt.Errorf("opencl: could not enumerate platforms (%s)", err)
	}

	infoList := make([]PlatformInfo, len(platforms))
	for pIdx, p := range platforms {
		infoList[pIdx] = PlatformInfo{
			Profile:    p.Profile(),
			Version:    p.Version(),
			Name:       p.Name(),
			Vendor:     p.Vendor(),
			Extensions: p.Extensions(),
			Devices:    make(DeviceList, 0),
		}

		// Platforms without devices of a particular type report an error
		// which is safe to ignore.
		for _, devType := range []DeviceType{CpuDevice, GpuDevice} {
			clType := cl.DeviceTypeCPU
			if devType == GpuDevice {
				clType = cl.DeviceTypeGPU
			}

			devices, err := p.GetDevices(clType)
			if err != nil {
				continue
			}
			for _, id := range devices {
				infoList[pIdx].Devices = append(infoList[pIdx].Devices, newDevice(infoList[pIdx].Name, id, devType))
			}
		}
	}

	return infoList, nil
}

// Scan all available opencl platforms and select devices that match the given query.
func SelectDevices(typeMask DeviceType, matchName string) (DeviceList, error) {
	platforms, err := GetPlatformInfo()
	if err != nil {
		return nil, err
	}
	list := make(DeviceList, 0)
	for _, p := range platforms {
		for _, d := range p.Devices {
			// Match type
			if d.Type&typeMask != d.Type {
				continue
			}

			// Match name
			if matchName != "" && !strings.Contains(d.Name, matchName) {
				continue
			}

			list = append(list, d)
		}
	}
	return list, nil
}
