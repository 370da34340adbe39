//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//*****************************************************************************

package utils

import (
	"path/filepath"
	"runtime"

	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
)

// SystemStats is the machine-level part of the health report.
type SystemStats struct {
	Goroutines      int     `json:"goroutines"`
	MemoryTotal     uint64  `json:"memory_total"`
	MemoryAvailable uint64  `json:"memory_available"`
	MemoryUsedPct   float64 `json:"memory_used_pct"`
	DiskTotal       uint64  `json:"disk_total"`
	DiskFree        uint64  `json:"disk_free"`
	DiskUsedPct     float64 `json:"disk_used_pct"`
}

// CollectSystemStats gathers memory and disk usage. Disk numbers refer to
// the filesystem holding dataDir, where artifacts and the datastore live.
func CollectSystemStats(dataDir string) (*SystemStats, error) {
	if runtime.GOOS == "windows" {
		dataDir = filepath.VolumeName(dataDir)
	}

	stats := &SystemStats{Goroutines: runtime.NumGoroutine()}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}
	stats.MemoryTotal = vm.Total
	stats.MemoryAvailable = vm.Available
	stats.MemoryUsedPct = vm.UsedPercent

	du, err := disk.Usage(dataDir)
	if err != nil {
		return nil, err
	}
	stats.DiskTotal = du.Total
	stats.DiskFree = du.Free
	stats.DiskUsedPct = du.UsedPercent

	return stats, nil
}
