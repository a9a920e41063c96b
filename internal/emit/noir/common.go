package noir

// sequenceHelper is emitted once per generated file, adapted from
// original_source/packages/compiler/src/noir/common.rs's Sequence struct:
// an (index, length, end) triple used by capture extraction to locate a
// group's span inside the haystack.
const sequenceHelper = `
struct Sequence {
    index: u32,
    length: u32,
    end: u32,
}

impl Sequence {
    fn new(index: u32, length: u32) -> Self {
        Self { index, length, end: index + length }
    }

    fn in_range(self, index: u32) -> bool {
        (index >= self.index) & (index < self.end)
    }
}
`
