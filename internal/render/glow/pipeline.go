package glow

// RenderPass receives one frame's uploaded instance data.
type RenderPass interface {
	DrawInstances(data []byte, stride, count int)
}

// Pipeline owns the instance buffer and the draw. A GPU backend compiles
// its shader and uploads in Prepare; Render records the instanced draw.
type Pipeline interface {
	Prepare()
	Render(pass RenderPass)
	Clear()
	Instances() *InstanceBuffer
}

// MemoryPipeline is a Pipeline whose "upload" is a byte slice. It backs the
// terminal preview and headless runs.
type MemoryPipeline struct {
	instances *InstanceBuffer
	staged    []byte
	count     int
}

// NewMemoryPipeline creates an empty pipeline.
func NewMemoryPipeline() *MemoryPipeline {
	return &MemoryPipeline{instances: NewInstanceBuffer(true)}
}

// Prepare encodes the pending instances.
func (p *MemoryPipeline) Prepare() {
	p.staged = p.instances.AppendBinary(p.staged[:0])
	p.count = p.instances.Len()
}

// Render draws what the last Prepare staged.
func (p *MemoryPipeline) Render(pass RenderPass) {
	if p.count == 0 {
		return
	}
	pass.DrawInstances(p.staged, p.instances.Stride(), p.count)
}

// Clear drops the pending instances. Staged data stays until the next
// Prepare so a frame can be redrawn.
func (p *MemoryPipeline) Clear() {
	p.instances.Reset()
}

// Instances returns the append sink.
func (p *MemoryPipeline) Instances() *InstanceBuffer {
	return p.instances
}

// Staged returns the bytes and count from the last Prepare.
func (p *MemoryPipeline) Staged() ([]byte, int) {
	return p.staged, p.count
}
