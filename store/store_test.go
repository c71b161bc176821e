package store

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCacheWrapIsolation(t *testing.T) {
	Convey("Given a store with a committed balance", t, func() {
		base := MemStore()
		key := []byte("acct:alice")
		So(base.Set(key, []byte{100}), ShouldBeNil)

		Convey("A discarded cache wrap leaves no trace", func() {
			cache := base.CacheWrap()
			So(cache.Set(key, []byte{0}), ShouldBeNil)
			So(cache.Set([]byte("acct:bob"), []byte{100}), ShouldBeNil)
			cache.Discard()

			v, err := base.Get(key)
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []byte{100})
			ok, err := base.Has([]byte("acct:bob"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("A written cache wrap replaces the balance", func() {
			cache := base.CacheWrap()
			So(cache.Set(key, []byte{0}), ShouldBeNil)
			So(cache.Write(), ShouldBeNil)

			v, err := base.Get(key)
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []byte{0})
		})

		Convey("A deleted key disappears from the iterator", func() {
			cache := base.CacheWrap()
			So(cache.Delete(key), ShouldBeNil)
			it, err := cache.Iterator(nil, nil)
			So(err, ShouldBeNil)
			So(it.Valid(), ShouldBeFalse)
			it.Close()
		})
	})
}
