// Package reflector is the Go side of the engine's reflection contract.
//
// A Registry holds one TypeInfo per reflected type, built from a resolved
// generation graph. TypeInfo dispatches on PropertyID exactly like the
// generated C++ type-info: it creates instances from the registry-owned
// default instance, manipulates arrays, compares and resets properties,
// and walks resource pointers to load, unload and poll them. Component
// drives the loading state machine of entity components.
//
//	r := reflector.NewRegistry()
//	if err := r.RegisterGraph(graph); err != nil {
//		return err
//	}
//	defer r.UnregisterAll()
//	info, _ := r.Lookup(id)
//	obj := info.CreateType()
package reflector
