package cpp

// emitComponentMethods emits the entity-component loading state machine:
//
//	Unloaded -> Loading -> Loaded | LoadingFailed
//	Loaded | LoadingFailed -> Unloaded
//
// Loading only advances when UpdateLoading is polled.
func (u *unit) emitComponentMethods() {
	t := u.typeName()
	info := typeInfoOf(u.t)
	hasProperties := u.t.HasProperties()

	u.Block("void "+t+"::Load( EntityModel::LoadingContext const& context, Resource::ResourceRequesterID const& requesterID )", func() {
		if hasProperties {
			u.Line("%s->LoadResources( context.m_pResourceSystem, requesterID, this );", info)
			u.Line("m_status = Status::Loading;")
			return
		}
		u.Line("m_status = Status::Loaded;")
	})
	u.Blank()

	u.Block("void "+t+"::Unload( EntityModel::LoadingContext const& context, Resource::ResourceRequesterID const& requesterID )", func() {
		if hasProperties {
			u.Line("%s->UnloadResources( context.m_pResourceSystem, requesterID, this );", info)
		}
		u.Line("m_status = Status::Unloaded;")
	})
	u.Blank()

	u.Block("void "+t+"::UpdateLoading()", func() {
		u.Line("if ( m_status == Status::Loading )")
		u.Open()
		if !hasProperties {
			u.Line("m_status = Status::Loaded;")
			u.Close("")
			return
		}
		u.Line("auto const resourceLoadingStatus = %s->GetResourceLoadingStatus( this );", info)
		u.Line("if ( resourceLoadingStatus == LoadingStatus::Loading )")
		u.Open()
		u.Line("return; // Something is still loading so early-out")
		u.Close("")
		u.Blank()
		u.Line("if ( resourceLoadingStatus == LoadingStatus::Failed )")
		u.Open()
		u.Line("m_status = Status::LoadingFailed;")
		u.Close("")
		u.Line("else")
		u.Open()
		u.Line("m_status = Status::Loaded;")
		u.Close("")
		u.Close("")
	})
	u.Blank()
}
