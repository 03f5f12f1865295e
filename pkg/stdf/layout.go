package stdf

import "sort"

// Partition is the fixed test-number-to-column assignment for one test
// category. SlotOf and TestNums are inverse views of the same
// bijection: SlotOf[TestNums[i]] == i.
type Partition struct {
	// SlotOf maps a test number to its zero-based column slot.
	SlotOf map[uint32]int

	// TestNums lists the partition's test numbers in slot order,
	// which is ascending test-number order.
	TestNums []uint32
}

// Len returns the number of column slots in the partition.
func (p *Partition) Len() int { return len(p.TestNums) }

// ColumnLayout is the column assignment for the row table, derived
// once from the merged metadata and immutable afterwards. Each result
// category gets its own independent zero-based slot range. Tests of
// other categories (scan, unknown) receive no slot.
type ColumnLayout struct {
	Parametric Partition
	Functional Partition
	MultiPin   Partition
}

// BuildColumnLayout assigns column slots from the merged metadata,
// sorted by ascending test number within each category for
// deterministic output.
func BuildColumnLayout(merged *FullMergedTestInformation) *ColumnLayout {
	nums := make([]uint32, 0, len(merged.TestInfos))
	for tnum := range merged.TestInfos {
		nums = append(nums, tnum)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })

	layout := &ColumnLayout{
		Parametric: Partition{SlotOf: make(map[uint32]int)},
		Functional: Partition{SlotOf: make(map[uint32]int)},
		MultiPin:   Partition{SlotOf: make(map[uint32]int)},
	}
	for _, tnum := range nums {
		var p *Partition
		switch merged.TestInfos[tnum].TestType {
		case TestTypeParametric:
			p = &layout.Parametric
		case TestTypeFunctional:
			p = &layout.Functional
		case TestTypeMultiPin:
			p = &layout.MultiPin
		default:
			continue
		}
		p.SlotOf[tnum] = len(p.TestNums)
		p.TestNums = append(p.TestNums, tnum)
	}
	return layout
}
